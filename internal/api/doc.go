// Package api implements the HTTP client for the Sponsorhub REST backend.
//
// Every request carries the session bearer token and is scoped under the
// caller's role prefix (/admin, /club or /sponsor). Responses are JSON.
//
// # Error Handling
//
// No call ever lets a transport or decoding failure escape raw: everything
// is classified into a *ClientError with a type, a user-facing message, and
// a retryability flag. Server-rejected requests keep the backend's own
// message verbatim when the error payload carries one, falling back to a
// generic string otherwise:
//
//	club, err := client.CreateClub(ctx, payload)
//	if err != nil {
//	    toast(api.ShortMessage(err)) // safe for direct display
//	}
//
// # List Normalization
//
// List endpoints are inconsistent between a bare JSON array and a wrapped
// {"resource": [...]} object. NormalizeList accepts both at the boundary so
// the rest of the code sees exactly one shape.
//
// # Uploads
//
// Files follow the upload-then-reference pattern: Upload posts the file as
// multipart/form-data and returns its stored URL, which the caller embeds in
// the subsequent create/update payload. Relative URLs returned by the
// backend resolve against the configured origin via ResolveFileURL.
package api
