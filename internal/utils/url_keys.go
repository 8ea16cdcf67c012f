package utils

const (
	// SchoolIdKey is the key for school ID used in routing parameters.
	SchoolIdKey = "schoolId"

	// AdoptionIdKey is the key for adoption ID used in routing parameters.
	AdoptionIdKey = "adoptionId"

	// EntryIdKey is the key for journal entry ID used in routing parameters.
	EntryIdKey = "entryId"

	// SchoolIdParamKey is the key for school ID used in query parameters.
	SchoolIdParamKey = "schoolId"

	// LimitParamKey is the key for limit used in query parameters.
	LimitParamKey = "limit"
)
