package response

import (
	"bytes"
	"encoding/json"
	"html/template"
	"io"
	"net/http"
)

const (
	HTMLContentType = "text/html; charset=utf-8"
	JSONContentType = "application/json"
)

// Template is satisfied by *template.Template and the typed page wrappers.
type Template interface {
	Execute(io.Writer, interface{}) error
}

var internalErrorTemplate = template.Must(template.New("").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Internal Server Error</title>
</head>
<body>
	<h1>Internal Server Error</h1>
	<p>Something went wrong while processing your request. Please try again.</p>
</body>
</html>
`))

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", JSONContentType)
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// HTML renders tmpl into a buffer before writing anything. On a template
// error nothing of the page is sent; the client gets the generic 500 page
// and the error is returned for logging.
func HTML(w http.ResponseWriter, statusCode int, tmpl Template, data interface{}) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		InternalServerError(w)
		return err
	}

	w.Header().Set("Content-Type", HTMLContentType)
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}

func InternalServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", HTMLContentType)
	w.WriteHeader(http.StatusInternalServerError)
	internalErrorTemplate.Execute(w, nil)
}
