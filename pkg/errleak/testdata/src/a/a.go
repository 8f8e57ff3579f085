package a

import (
	"errors"
	"fmt"
	"net/http"
)

type decodeError struct{ kind string }

func (e *decodeError) Error() string { return e.kind }

var errBroken = errors.New("broken")

func handler(w http.ResponseWriter, r *http.Request) {
	err := errors.New("boom")
	http.Error(w, err.Error(), http.StatusInternalServerError)                        // want "error value leaks into HTTP response body"
	http.Error(w, "failed: "+err.Error(), http.StatusInternalServerError)             // want "error value leaks into HTTP response body"
	http.Error(w, fmt.Sprintf("failed: %v", err), http.StatusInternalServerError)     // want "error value leaks into HTTP response body"
	http.Error(w, errBroken.Error(), http.StatusInternalServerError)                  // want "error value leaks into HTTP response body"
	http.Error(w, (&decodeError{kind: "x"}).Error(), http.StatusInternalServerError) // want "error value leaks into HTTP response body"
	http.Error(w, "Internal server error", http.StatusInternalServerError)
	http.Error(w, fmt.Sprintf("label %q not found", r.URL.Path), http.StatusNotFound)
	fmt.Println(err.Error())
}
