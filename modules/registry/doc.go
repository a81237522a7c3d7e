// Package registry mounts the case registry API:
//
//	POST /cases                             create a case and its share link
//	GET  /cases/{id}                        case, link and documents
//	GET  /cases/{id}/documents              documents only
//	POST /cases/{id}/documents              record a document
//	POST /cases/{id}/public-link/deactivate revoke the share link
//	GET  /public/cases/{publicId}           public lookup by share id
//
// Unknown cases and unknown or deactivated share ids answer 404. When the
// server runs without a database every route answers 503.
package registry
