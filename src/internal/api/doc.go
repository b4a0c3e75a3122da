// Package api provides the read-only REST API of "ifselect serve".
//
// Endpoints under /api/v1:
//   - GET /health: interface table and selection checks
//   - GET /status: version, effective parameters and their hash
//   - GET /interfaces?spec=&family=&max=: filtered enumeration
//   - GET /select?max=: the selection cascade with the step that answered
//   - GET /subnet?endpoint=&max=: interfaces sharing a subnet with an endpoint
//   - GET /resolve?endpoint=: endpoint parsing
//   - GET /local?ip=: local address check
//
// Access is limited to private and loopback clients.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "invalid_format",
//	    "message": "Human-readable error message",
//	    "details": { "domain_code": "INVALID_FORMAT" }
//	  }
//	}
//
// Malformed filters and endpoints are answered with 400, failed lookups
// with 422 and interface table failures with 500.
package api
