//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

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

type LotHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLotCommands
	mockQueries  *queriesmock.MockLotQueries
	handler      *api.LotHandler
	actorID      uuid.UUID
}

func (s *LotHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLotCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockLotQueries(s.mockCtrl)
	s.handler = api.NewLotHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleAdmin)
		c.Next()
	}

	// Setup routes
	s.router.POST("/lots", authMiddleware, s.handler.CreateLot)
	s.router.GET("/lots", authMiddleware, s.handler.ListLots)
	s.router.GET("/lots/:id", authMiddleware, s.handler.GetLot)
	s.router.PATCH("/lots/:id", authMiddleware, s.handler.UpdateLot)
	s.router.DELETE("/lots/:id", authMiddleware, s.handler.DeleteLot)
	s.router.GET("/lots/:id/spots", authMiddleware, s.handler.ListSpots)
	s.router.POST("/lots/:id/spots", authMiddleware, s.handler.AddSpot)
	s.router.DELETE("/spots/:id", authMiddleware, s.handler.DeleteSpot)
	s.router.GET("/admin/summary", authMiddleware, s.handler.GetSummary)
}

func (s *LotHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLotHandlerSuite(t *testing.T) {
	suite.Run(t, new(LotHandlerTestSuite))
}

// ================================================================================
// TestCreateLot
// ================================================================================

func (s *LotHandlerTestSuite) TestCreateLot() {
	url := "/lots"

	reqBody := builder.NewLotBuilder().BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the new lot ID", func() {
		lotID := uuid.New()
		s.mockCommands.EXPECT().CreateLot(gomock.Any(), reqBody).
			Return(lotID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(lotID.String(), response["id"])
	})

	s.Run("error: 400 Bad Request for invalid payloads", func() {
		testCases := []struct {
			name     string
			mutation func(map[string]any)
		}{
			{"missing name", func(m map[string]any) { delete(m, "name") }},
			{"name too long", func(m map[string]any) { m["name"] = strings.Repeat("a", 129) }},
			{"zero hourly rate", func(m map[string]any) { m["hourly_rate_cents"] = 0 }},
			{"negative hourly rate", func(m map[string]any) { m["hourly_rate_cents"] = -100 }},
			{"zero capacity", func(m map[string]any) { m["capacity"] = 0 }},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody)
				tc.mutation(body)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().CreateLot(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Domain validation failed")
	})

	s.Run("error: 401 Unauthorized without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 500 Internal Server Error on unexpected failure", func() {
		s.mockCommands.EXPECT().CreateLot(gomock.Any(), gomock.Any()).
			Return(uuid.Nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestUpdateLot
// ================================================================================

func (s *LotHandlerTestSuite) TestUpdateLot() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String()
	newName := "Harbor Deck"
	reqBody := map[string]any{"name": newName}

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateLot(gomock.Any(), lotID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for malformed lot ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/lots/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lot ID format")
	})

	s.Run("error: mapping of usecase errors", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
			expectedError  string
		}{
			{"lot not found", commands.ErrLotNotFound, http.StatusNotFound, "Lot not found"},
			{"domain validation", commands.ErrDomainValidation, http.StatusUnprocessableEntity, "Domain validation failed"},
			{"unexpected", errors.New("db down"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateLot(gomock.Any(), lotID, gomock.Any()).
					Return(tc.usecaseError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedError)
			})
		}
	})
}

// ================================================================================
// TestDeleteLot
// ================================================================================

func (s *LotHandlerTestSuite) TestDeleteLot() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteLot(gomock.Any(), lotID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown lot", func() {
		s.mockCommands.EXPECT().DeleteLot(gomock.Any(), lotID).
			Return(commands.ErrLotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lot not found")
	})

	s.Run("error: 409 Conflict while a spot is occupied", func() {
		s.mockCommands.EXPECT().DeleteLot(gomock.Any(), lotID).
			Return(commands.ErrLotOccupied).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Lot has occupied spots")
	})
}

// ================================================================================
// TestGetLot / TestListLots
// ================================================================================

func (s *LotHandlerTestSuite) TestGetLot() {
	returnView := builder.NewLotBuilder().BuildViewQuery()
	url := "/lots/" + returnView.ID.String()

	s.Run("success: returns 200 OK with lot details", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.LotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Name, response.Name)
		s.Equal(returnView.AvailableSpots, response.AvailableSpots)
	})

	s.Run("error: 404 Not Found for unknown lot", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(nil, queries.ErrLotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lot not found")
	})

	s.Run("error: 400 Bad Request for malformed lot ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/lots/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid lot ID format")
	})
}

func (s *LotHandlerTestSuite) TestListLots() {
	url := "/lots"

	s.Run("success: returns 200 OK with all lots", func() {
		views := []*queries.LotView{
			builder.NewLotBuilder().BuildViewQuery(),
			builder.NewLotBuilder().WithName("Harbor Deck").BuildViewQuery(),
		}
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.LotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(views[1].Name, response[1].Name)
	})

	s.Run("success: ?q= routes to search", func() {
		views := []*queries.LotView{builder.NewLotBuilder().BuildViewQuery()}
		s.mockQueries.EXPECT().Search(gomock.Any(), "lakeview").
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?q=lakeview", nil, "bearer-token")

		var response []*resdto.LotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("success: empty result is an empty array, not null", func() {
		s.mockQueries.EXPECT().List(gomock.Any()).
			Return([]*queries.LotView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq("[]", rec.Body.String())
	})
}

// ================================================================================
// TestSpotManagement
// ================================================================================

func (s *LotHandlerTestSuite) TestListSpots() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String() + "/spots"

	s.Run("success: returns 200 OK with spot statuses", func() {
		views := []*queries.SpotView{
			{ID: uuid.New(), LotID: lotID, Label: "S-001", Status: "occupied"},
			{ID: uuid.New(), LotID: lotID, Label: "S-002", Status: "available"},
		}
		s.mockQueries.EXPECT().ListSpots(gomock.Any(), lotID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.SpotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal("S-001", response[0].Label)
		s.Equal("occupied", response[0].Status)
	})

	s.Run("error: 404 Not Found for unknown lot", func() {
		s.mockQueries.EXPECT().ListSpots(gomock.Any(), lotID).
			Return(nil, queries.ErrLotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lot not found")
	})
}

func (s *LotHandlerTestSuite) TestAddSpot() {
	lotID := uuid.New()
	url := "/lots/" + lotID.String() + "/spots"

	s.Run("success: returns 201 Created with the new spot ID", func() {
		spotID := uuid.New()
		s.mockCommands.EXPECT().AddSpot(gomock.Any(), lotID).
			Return(spotID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var response map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(spotID.String(), response["id"])
	})

	s.Run("error: 404 Not Found for unknown lot", func() {
		s.mockCommands.EXPECT().AddSpot(gomock.Any(), lotID).
			Return(uuid.Nil, commands.ErrLotNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Lot not found")
	})
}

func (s *LotHandlerTestSuite) TestDeleteSpot() {
	spotID := uuid.New()
	url := "/spots/" + spotID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteSpot(gomock.Any(), spotID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: mapping of usecase errors", func() {
		testCases := []struct {
			name           string
			usecaseError   error
			expectedStatus int
			expectedError  string
		}{
			{"spot not found", commands.ErrSpotNotFound, http.StatusNotFound, "Spot not found"},
			{"spot occupied", commands.ErrSpotOccupied, http.StatusConflict, "Spot is occupied"},
			{"last spot", commands.ErrLotHasNoCapacity, http.StatusConflict, "Cannot delete the last spot"},
			{"unexpected", errors.New("db down"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().DeleteSpot(gomock.Any(), spotID).
					Return(tc.usecaseError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedError)
			})
		}
	})
}

// ================================================================================
// TestGetSummary
// ================================================================================

func (s *LotHandlerTestSuite) TestGetSummary() {
	url := "/admin/summary"

	s.Run("success: returns 200 OK with per-lot figures", func() {
		views := []*queries.LotSummaryView{
			{
				LotID:            uuid.New(),
				Name:             "Lakeview Garage",
				Capacity:         3,
				AvailableSpots:   2,
				OccupiedSpots:    1,
				ReservationCount: 5,
				RevenueCents:     7500,
			},
		}
		s.mockQueries.EXPECT().Summary(gomock.Any()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []*resdto.LotSummaryResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(int64(7500), response[0].RevenueCents)
		s.Equal(int64(5), response[0].ReservationCount)
	})

	s.Run("error: 500 Internal Server Error on query failure", func() {
		s.mockQueries.EXPECT().Summary(gomock.Any()).
			Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
