// Package api implements the HTTP client for the Lantern dashboard backend.
//
// The client exposes three request modes:
//
//  1. Unary: one request/response cycle returning a decoded JSON document,
//     raw text, or an explicit no-content result (204).
//  2. Streaming: an incrementally decoded sequence of text fragments, used
//     for chat responses ([Stream]).
//  3. Progress-tracked upload: a multipart upload reporting transmitted
//     bytes and supporting mid-flight cancellation.
//
// Request bodies are an explicit tagged union: [JSONBody] for JSON
// documents, [Form] for multipart payloads that may carry binary file
// content. Failures are classified by HTTP status into [Error] values with
// a [Kind] of KindCredential (401/403), KindGeneric (400), or KindNetwork
// (any other non-success). User-initiated cancellation of an upload is a
// distinct [ErrAborted] outcome, not a failure category.
//
// The session token is owned by an explicit [Session] passed to the client;
// there is no ambient or global credential state. A credential-category
// failure clears the local token without contacting the server again.
package api
