// Package common contains shared constants and sentinel errors used across
// letterpal components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix of the Authorization header value.
const BearerPrefix = "Bearer "

// CompletionThreshold is the stage at which a letter counts as mastered.
const CompletionThreshold = 3

// LetterCount is the size of the alphabet catalog.
const LetterCount = 26

// DayFormat is the calendar-day identifier layout used for check-ins.
const DayFormat = "2006-01-02"
