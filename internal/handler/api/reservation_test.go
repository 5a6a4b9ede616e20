//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"parkhub/internal/domain/user"
	"parkhub/internal/handler/api"
	resdto "parkhub/internal/handler/dto/response"
	"parkhub/internal/usecase/commands"
	"parkhub/internal/usecase/queries"
	"parkhub/tests/common/builder"
	"parkhub/tests/common/httptest"
	"parkhub/tests/common/testutil"
	commandsmock "parkhub/tests/mock/commands"
	queriesmock "parkhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAllocationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	actorID      uuid.UUID
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAllocationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	// Setup routes
	s.router.POST("/reservations", authMiddleware, s.handler.CreateReservation)
	s.router.GET("/reservations", authMiddleware, s.handler.GetUserReservations)
	s.router.GET("/reservations/:id", authMiddleware, s.handler.GetReservation)
	s.router.POST("/reservations/:id/release", authMiddleware, s.handler.ReleaseReservation)
	s.router.GET("/spots/:id/active", authMiddleware, s.handler.GetActiveForSpot)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

func idempotencyHeader() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

// ================================================================================
// TestCreateReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreateReservation() {
	url := "/reservations"

	reqBody := builder.NewReservationBuilder().BuildCreateRequestDTO()
	returnView := builder.NewReservationBuilder().WithUserID(s.actorID).BuildViewQuery()

	s.Run("success: returns 201 Created for a fresh reservation", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), s.actorID, gomock.Any()).
			Return(&commands.ReserveResult{Reservation: returnView}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeader())

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.SpotLabel, response.SpotLabel)
		s.Nil(response.ClosedAt)
		s.Nil(response.CostCents)
	})

	s.Run("success: returns 200 OK when an idempotent retry is replayed", func() {
		s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), s.actorID, gomock.Any()).
			Return(&commands.ReserveResult{Reservation: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeader())

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 400 Bad Request without Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key")
	})

	s.Run("error: 400 Bad Request for malformed Idempotency-Key", func() {
		headers := map[string]string{"Idempotency-Key": "not-a-uuid"}
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", headers)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name       string
			mutate     func(m map[string]any)
			expectCode int
		}{
			{name: "missing field: lot_id (required)", mutate: testutil.Field("lot_id", nil), expectCode: http.StatusBadRequest},
			{name: "lot_id not a UUID", mutate: testutil.Field("lot_id", "garage-1"), expectCode: http.StatusBadRequest},
			{name: "vehicle_number length OK (32 chars)", mutate: testutil.Field("vehicle_number", strings.Repeat("A", 32)), expectCode: http.StatusCreated},
			{name: "vehicle_number length invalid (33 chars)", mutate: testutil.Field("vehicle_number", strings.Repeat("A", 33)), expectCode: http.StatusBadRequest},
			{name: "vehicle_number omitted is OK", mutate: testutil.Field("vehicle_number", nil), expectCode: http.StatusCreated},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().Reserve(gomock.Any(), gomock.Any(), s.actorID, gomock.Any()).
						Return(&commands.ReserveResult{Reservation: returnView}, nil).Times(1)
				}
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", idempotencyHeader())
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", idempotencyHeader())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "lot not found",
				commandsError:  commands.ErrLotNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Lot not found",
			},
			{
				name:           "no spot available",
				commandsError:  commands.ErrNoSpotAvailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "No spot available",
			},
			{
				name:           "spot claim lost to a concurrent request",
				commandsError:  commands.ErrSpotClaimConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "claimed concurrently",
			},
			{
				name:           "idempotent request still in progress",
				commandsError:  commands.ErrIdempotencyInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "being processed",
			},
			{
				name:           "same key with different parameters",
				commandsError:  commands.ErrDuplicateRequest,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Duplicate reservation request",
			},
			{
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reserve(gomock.Any(), reqBody, s.actorID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeader())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestReleaseReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestReleaseReservation() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String() + "/release"

	closedAt := builder.NewReservationBuilder().OpenedAt.Add(90 * time.Minute)
	returnView := builder.NewReservationBuilder().
		WithUserID(s.actorID).
		AsClosed(closedAt, 1500).
		BuildViewQuery()
	returnView.ID = reservationID

	s.Run("success: returns 200 OK with the priced reservation", func() {
		s.mockCommands.EXPECT().Release(gomock.Any(), reservationID, s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservationID, response.ID)
		s.NotNil(response.ClosedAt)
		if s.NotNil(response.CostCents) {
			s.Equal(int64(1500), *response.CostCents)
		}
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/reservations/invalid-uuid/release"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, invalidURL, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "reservation not found",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reservation not found",
			},
			{
				name:           "not the owner",
				commandsError:  commands.ErrNotReservationOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "owner",
			},
			{
				name:           "already closed",
				commandsError:  commands.ErrReservationAlreadyClosed,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already closed",
			},
			{
				name:           "release before opening time",
				commandsError:  commands.ErrInvalidReleaseInterval,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "after the reservation start",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Release(gomock.Any(), reservationID, s.actorID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetReservation
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetReservation() {
	reservationID := uuid.New()
	url := "/reservations/" + reservationID.String()

	returnView := builder.NewReservationBuilder().WithUserID(s.actorID).BuildViewQuery()
	returnView.ID = reservationID

	s.Run("success: returns 200 OK with ReservationResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleUser, reservationID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(reservationID, response.ID)
		s.Equal(returnView.LotName, response.LotName)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation ID")
	})

	s.Run("error: 404 Not Found for a foreign or missing reservation", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleUser, reservationID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Reservation not found")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.actorID, user.RoleUser, reservationID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal")
	})
}

// ================================================================================
// TestGetUserReservations
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetUserReservations() {
	url := "/reservations"

	items := []*queries.ReservationListItem{
		builder.NewReservationBuilder().WithUserID(s.actorID).BuildListItem(),
		builder.NewReservationBuilder().WithUserID(s.actorID).AsClosed(builder.NewReservationBuilder().OpenedAt.Add(time.Hour), 1000).BuildListItem(),
	}

	s.Run("success: returns the caller's reservations", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, len(items))
		// Creation order is preserved as returned by the query side.
		s.Equal(items[0].ID, response[0].ID)
		s.Equal(items[1].ID, response[1].ID)
	})

	s.Run("success: empty history returns an empty list", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID).
			Return([]*queries.ReservationListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.ReservationListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Empty(response)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal")
	})
}

// ================================================================================
// TestGetActiveForSpot
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGetActiveForSpot() {
	spotID := uuid.New()
	url := "/spots/" + spotID.String() + "/active"

	openView := builder.NewReservationBuilder().WithSpotID(spotID).BuildViewQuery()
	activeView := &queries.ActiveReservationView{
		Reservation:        *openView,
		EstimatedCostCents: 1500,
		EstimatedAt:        openView.OpenedAt.Add(90 * time.Minute),
	}

	s.Run("success: returns the open reservation with an estimate", func() {
		s.mockQueries.EXPECT().ActiveForSpot(gomock.Any(), spotID).
			Return(activeView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ActiveReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(spotID, response.Reservation.SpotID)
		s.Equal(int64(1500), response.EstimatedCostCents)
		// The estimate never shows up as a persisted cost.
		s.Nil(response.Reservation.CostCents)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/spots/invalid-uuid/active", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid spot ID")
	})

	s.Run("error: 404 Not Found when the spot is free", func() {
		s.mockQueries.EXPECT().ActiveForSpot(gomock.Any(), spotID).
			Return(nil, queries.ErrNoActiveReservation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "No active reservation")
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().ActiveForSpot(gomock.Any(), spotID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal")
	})
}
