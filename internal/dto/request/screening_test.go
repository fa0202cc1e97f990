package request

import (
	"testing"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validScreeningRequest() CreateScreeningRequest {
	return CreateScreeningRequest{
		MovieID:  uuid.New().String(),
		HallID:   uuid.New().String(),
		StartsAt: "2026-09-01T19:00:00Z",
		Price:    50000,
		Quality:  "IMAX",
	}
}

func TestCreateScreeningRequestFreeScreeningIsValid(t *testing.T) {
	req := validScreeningRequest()
	req.Price = 0

	assert.Nil(t, utils.ValidateStruct(req))
}

func TestCreateScreeningRequestNegativePriceRejected(t *testing.T) {
	req := validScreeningRequest()
	req.Price = -1

	errs := utils.ValidateStruct(req)
	assert.Contains(t, errs, "Price")
}
