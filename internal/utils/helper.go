package utils

import (
	"log/slog"
	"os"
	"regexp"
)

const masked = "***MASKED***"

var (
	// key=VALUE, api_key=VALUE, apiKey=VALUE, access_token=VALUE in query strings
	queryKeyPattern = regexp.MustCompile(`([?&])(api[_\-]?[kK]ey|key|access_token)=([^&\s"]+)`)
	bearerPattern   = regexp.MustCompile(`Bearer\s+([A-Za-z0-9_\-\.]+)`)
	// Google API keys and OAuth access tokens outside a URL
	googleKeyPattern   = regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{20,}`)
	googleTokenPattern = regexp.MustCompile(`\bya29\.[0-9A-Za-z_\-\.]+`)
	// "private_key": "..." from a service account file
	privateKeyPattern = regexp.MustCompile(`("private_key(?:_id)?"\s*:\s*")([^"]*)(")`)
)

// MaskSensitiveData masks credentials in strings that may end up in logs
func MaskSensitiveData(s string) string {
	if s == "" {
		return s
	}

	s = queryKeyPattern.ReplaceAllString(s, `${1}${2}=`+masked)
	s = bearerPattern.ReplaceAllString(s, `Bearer `+masked)
	s = googleKeyPattern.ReplaceAllString(s, masked)
	s = googleTokenPattern.ReplaceAllString(s, masked)
	s = privateKeyPattern.ReplaceAllString(s, `${1}`+masked+`${3}`)

	return s
}

// MaskSensitiveError wraps an error and masks sensitive data when the error is converted to string
func MaskSensitiveError(err error) error {
	if err == nil {
		return nil
	}
	return &maskedError{err: err}
}

type maskedError struct {
	err error
}

func (e *maskedError) Error() string {
	return MaskSensitiveData(e.err.Error())
}

func (e *maskedError) Unwrap() error {
	return e.err
}

func ExitOnError(msg string, err error) {
	slog.Error(msg, "err", MaskSensitiveError(err))
	os.Exit(1)
}
