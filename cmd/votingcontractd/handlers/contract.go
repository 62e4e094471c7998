package handlers

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/tokenized/voting-contract/internal/contract"
	"github.com/tokenized/voting-contract/internal/platform/node"
	"github.com/tokenized/voting-contract/internal/platform/protomux"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/tokenized/pkg/logger"
	"go.opencensus.io/trace"
)

// maxBodySize limits request bodies.
const maxBodySize = 1 << 20

// Contract exposes the contract methods over HTTP.
type Contract struct {
	App *node.App
}

// envelope is the {"method", "payload"} request used by dapp frontends.
type envelope struct {
	Method  string          `json:"method"`
	Payload json.RawMessage `json:"payload"`
}

// status is the reply to an envelope request.
type status struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Envelope calls the method named in the request body.
func (c *Contract) Envelope(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, span := trace.StartSpan(r.Context(), "handlers.Contract.Envelope")
	defer span.End()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		respondStatus(w, http.StatusBadRequest, "error", "Invalid request body")
		return
	}

	var req envelope
	if err := json.Unmarshal(body, &req); err != nil {
		respondStatus(w, http.StatusBadRequest, "error", "Invalid request body")
		return
	}

	b, err := c.App.Invoke(ctx, req.Method, req.Payload)
	if err != nil {
		code, msg := errorResponse(req.Method, err)
		if code == http.StatusInternalServerError {
			logger.Error(ctx, "Method %s failed : %s", req.Method, err)
		}
		respondStatus(w, code, "error", msg)
		return
	}

	var response contract.Response
	if err := json.Unmarshal(b, &response); err != nil {
		logger.Error(ctx, "Invalid contract response : %s", err)
		respondStatus(w, http.StatusInternalServerError, "error", "Invalid contract response")
		return
	}

	respondStatus(w, http.StatusOK, "success", response.Msg)
}

// Method returns a route that passes the request body to the contract as the
// payload of method and replies with the contract's own response.
func (c *Contract) Method(method string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, span := trace.StartSpan(r.Context(), "handlers.Contract.Method")
		defer span.End()

		body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			respond(w, http.StatusBadRequest,
				contract.MarshalError(contract.NewError(contract.InvalidInput,
					"Invalid request body")))
			return
		}

		b, err := c.App.Invoke(ctx, method, body)
		if err != nil {
			code, _ := errorResponse(method, err)
			respond(w, code, contract.MarshalError(err))
			return
		}

		respond(w, http.StatusOK, b)
	}
}

// errorResponse maps a contract call error to a status code and message.
func errorResponse(method string, err error) (int, string) {
	switch {
	case errors.Cause(err) == protomux.ErrUnknownMethod:
		return http.StatusBadRequest, fmt.Sprintf("Unknown method '%s'", method)
	case contract.IsInvalidInput(err):
		return http.StatusBadRequest, errors.Cause(err).Error()
	case contract.IsSerializationFailure(err):
		return http.StatusInternalServerError, errors.Cause(err).Error()
	}

	return http.StatusInternalServerError, err.Error()
}

func respondStatus(w http.ResponseWriter, code int, s, msg string) {
	b, err := json.Marshal(status{Status: s, Message: msg})
	if err != nil {
		http.Error(w, msg, http.StatusInternalServerError)
		return
	}

	respond(w, code, b)
}

func respond(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}
