package handler

import "net/http"

type emptyResponse int

func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(int(e))
	return nil
}

// Empty answers 204 No Content, as used by state changes that return
// nothing, such as deactivating a share link.
func Empty() Response {
	return emptyResponse(http.StatusNoContent)
}

// EmptyWithStatus answers with status and no body.
//
//	return handler.EmptyWithStatus(http.StatusAccepted)
func EmptyWithStatus(status int) Response {
	return emptyResponse(status)
}
