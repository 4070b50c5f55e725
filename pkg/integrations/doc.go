// Package integrations provides HTTP clients for the gallery server.
//
// # Overview
//
// [Client] is the shared transport: default headers, response caching
// through a [cache.Cache], retries for transient failures, and mapping of
// HTTP statuses to coded errors. The REST client for the gallery lives in
// the [photoprism] subpackage and is built on top of it.
//
// # Status mapping
//
//   - 200: success
//   - 403: REAUTHENTICATE. The token cookie was rejected; redeem again.
//   - 404: NOT_FOUND, wrapping [ErrNotFound]
//   - 5xx: NETWORK_ERROR, retryable
//   - anything else: NETWORK_ERROR, wrapping [ErrNetwork]
//
// Only GETs are retried. Edits and token changes are sent once.
//
// [photoprism]: github.com/matzehuels/photogrid/pkg/integrations/photoprism
// [cache.Cache]: github.com/matzehuels/photogrid/pkg/cache.Cache
package integrations
