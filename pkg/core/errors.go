package core

import "errors"

// Per-document problems (soft failures). Each is attributed to the document
// that produced it and surfaces as a build.Warning unless the build config
// sets BreakOnFileError, in which case the first one fails the build.
var (
	ErrFileNotFound              = errors.New("file not found")
	ErrInvalidSRT                = errors.New("invalid SRT content")
	ErrSelectorNotPresent        = errors.New("no element matched the include selector")
	ErrEmptyWordList             = errors.New("document produced no indexable words")
	ErrCannotDetermineFiletype   = errors.New("cannot determine filetype")
	ErrWebPageNotFetched         = errors.New("web page could not be fetched")
	ErrWebPageErrorfulStatusCode = errors.New("web page returned an error status code")
	ErrUnknownContentType        = errors.New("unknown content-type")
	ErrWebScrapingNotEnabled     = errors.New("web scraping is not enabled in this build")
)

// Build-fatal errors: the whole build fails regardless of per-document
// recovery policy.
var (
	ErrNoFilesSpecified        = errors.New("no files specified")
	ErrAllDocumentsHadProblems = errors.New("all documents had problems")
)

// Parse-fatal errors: returned while decoding a serialized index.
var (
	ErrFileTooShort   = errors.New("index file is too short to contain a valid envelope")
	ErrBadSegmentSize = errors.New("segment length does not match the number of bytes available")
	ErrBadPrefixSize  = errors.New("prefix length is out of the valid [1, 32] range")
	ErrUnknownPrefix  = errors.New("unrecognized index format prefix")
)

// DecodeError wraps a failure from the underlying payload decoder with the
// schema version that was being decoded.
type DecodeError struct {
	Version Version
	Cause   error
}

func (e *DecodeError) Error() string {
	return "failed to decode " + versionName(e.Version) + " payload: " + e.Cause.Error()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func versionName(v Version) string {
	switch v {
	case V2:
		return "stork-2"
	case V3:
		return "stork-3"
	case V4:
		return "stork-4"
	default:
		return "unknown"
	}
}
