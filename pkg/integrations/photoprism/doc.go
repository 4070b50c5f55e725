// Package photoprism is the REST client for the photoprism gallery server.
//
// Every request carries the token cookie (token=a:b:c) held in a
// [gallery.TokenJar]. The server answers 403 when the cookie grants
// nothing; that surfaces as REAUTHENTICATE and the user has to redeem a
// code again.
//
// Endpoints:
//
//	GET  /servlet/browserest   Browse, Notifications
//	GET  /rest/edit?img=N      GetPicture
//	POST /rest/edit            Edit
//	GET  /rest/suggest         Suggest
//	GET  /rest/tag[?v=1]       Tags
//	POST /servlet/token        Redeem, CreateToken, DeleteToken
//	POST /rest/upload          Upload (multipart)
//
// Tag listings and suggestions are cached per server and token jar.
//
// [gallery.TokenJar]: github.com/matzehuels/photogrid/pkg/gallery.TokenJar
package photoprism
