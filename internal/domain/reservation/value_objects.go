package reservation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrVehicleNumberTooLong = errors.New("vehicle number is too long")

const MaxVehicleNumberLength = 32

// VehicleNumber is free-form text the driver supplies. It is optional and
// only kept for the occupancy report.
type VehicleNumber struct {
	value string
}

func NewVehicleNumber(s string) (VehicleNumber, error) {
	s = strings.TrimSpace(s)
	if len(s) > MaxVehicleNumberLength {
		return VehicleNumber{}, ErrVehicleNumberTooLong
	}
	return VehicleNumber{value: s}, nil
}

func (v VehicleNumber) String() string {
	return v.value
}

func (v VehicleNumber) IsEmpty() bool {
	return v.value == ""
}

// Money holds an amount in integer cents to keep arithmetic exact.
type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
