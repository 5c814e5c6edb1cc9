package console

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/golang/glog"
	"github.com/krancour/yuadmin/internal/pages"
	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
)

// inboundRequest models an inbound request to one of the console's JSON
// endpoints.
type inboundRequest struct {
	w http.ResponseWriter
	r *http.Request
	// reqBodyObj optionally receives the decoded request body.
	reqBodyObj interface{}
	// endpointLogic does the actual work. When it fails but still returns a
	// response object, that object is written with the error's status code.
	endpointLogic func() (interface{}, error)
	successCode   int
}

// errorBody has the same shape as the backend's own error responses.
type errorBody struct {
	Msg string `json:"msg"`
}

func (s *server) serveRequest(req inboundRequest) {
	if req.reqBodyObj != nil {
		bodyBytes, err := ioutil.ReadAll(req.r.Body)
		if err != nil {
			glog.Errorf(
				"[%s] error reading request body: %s",
				requestIDFromContext(req.r.Context()),
				err,
			)
			s.writeResponse(
				req.w,
				http.StatusBadRequest,
				errorBody{Msg: "Could not read request body."},
			)
			return
		}
		if err = json.Unmarshal(bodyBytes, req.reqBodyObj); err != nil {
			s.writeResponse(
				req.w,
				http.StatusBadRequest,
				errorBody{Msg: "Request body is not valid JSON."},
			)
			return
		}
	}
	respBodyObj, err := req.endpointLogic()
	if err != nil {
		statusCode := errorStatusCode(err)
		if statusCode >= http.StatusInternalServerError {
			glog.Errorf(
				"[%s] %s %s: %s",
				requestIDFromContext(req.r.Context()),
				req.r.Method,
				req.r.URL.Path,
				err,
			)
		}
		if respBodyObj == nil {
			respBodyObj = errorBody{
				Msg: api.ErrorMessage(err, http.StatusText(statusCode)),
			}
		}
		s.writeResponse(req.w, statusCode, respBodyObj)
		return
	}
	s.writeResponse(req.w, req.successCode, respBodyObj)
}

// errorStatusCode maps an error onto the status code the console answers
// with. Backend status codes are passed through; failures to reach the
// backend at all are a bad gateway.
func errorStatusCode(err error) int {
	if _, ok := errors.Cause(err).(*pages.ErrValidation); ok {
		return http.StatusBadRequest
	}
	if statusCode := api.StatusCode(err); statusCode != 0 {
		return statusCode
	}
	return http.StatusBadGateway
}

func (s *server) writeResponse(
	w http.ResponseWriter,
	statusCode int,
	response interface{},
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	responseBody, ok := response.([]byte)
	if !ok {
		var err error
		if responseBody, err = json.Marshal(response); err != nil {
			glog.Errorf("error marshaling response body: %s", err)
		}
	}
	if _, err := w.Write(responseBody); err != nil {
		glog.Errorf("error writing response body: %s", err)
	}
}

// humanRequest models an inbound request for a plain text screen.
type humanRequest struct {
	w           http.ResponseWriter
	body        string
	successCode int
}

func (s *server) serveHumanRequest(req humanRequest) {
	req.w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	req.w.WriteHeader(req.successCode)
	if _, err := req.w.Write([]byte(req.body)); err != nil {
		glog.Errorf("error writing response body: %s", err)
	}
}

func (s *server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeResponse(
		w,
		http.StatusNotFound,
		errorBody{Msg: "Página não encontrada."},
	)
}
