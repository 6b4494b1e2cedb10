// Package middleware groups the HTTP middleware used by the serve command.
//
// Sub-packages:
//   - rayid: assigns a unique RayID (request id) to every incoming request,
//     stored in the request locals and echoed in the X-Ray-Id response header.
//   - auth: guards the API with a static API key when one is configured.
package middleware
