package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adoption-server/internal/schemas"
)

func TestSanitizeDataStripsMarkup(t *testing.T) {
	request := &schemas.CreateJournalEntryRequest{
		EntryText: `<script>alert("x")</script>Prayed today`,
	}

	require.NoError(t, GetValidator().SanitizeData(request))
	assert.Equal(t, "Prayed today", request.EntryText)
}

func TestSanitizeDataRejectsNonStructPointer(t *testing.T) {
	assert.Error(t, GetValidator().SanitizeData("not a struct"))
}

func TestCoordinateValidation(t *testing.T) {
	float := func(f float64) *float64 { return &f }

	valid := &schemas.CreateSchoolRequest{
		Name:      "Riverside Elementary",
		Address:   "12 River Road",
		Latitude:  float(48.137),
		Longitude: float(11.575),
	}
	assert.NoError(t, GetValidator().Validate.Struct(valid))

	outOfRange := &schemas.CreateSchoolRequest{
		Name:      "Riverside Elementary",
		Address:   "12 River Road",
		Latitude:  float(91),
		Longitude: float(11.575),
	}
	assert.Error(t, GetValidator().Validate.Struct(outOfRange))

	outOfRange.Latitude = float(48.137)
	outOfRange.Longitude = float(-181)
	assert.Error(t, GetValidator().Validate.Struct(outOfRange))
}
