package http

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
)

type DecodeRequestFunc func(ctx context.Context, r *http.Request) (interface{}, error)

type EncodeResponseFunc func(ctx context.Context, w http.ResponseWriter, response interface{}) error

// MakeHandlerFunc glues a go-kit endpoint into a chi handler: decode the
// request, run the endpoint, encode the response, and map any error
// through the shared error encoder.
func MakeHandlerFunc(ep endpoint.Endpoint, decode DecodeRequestFunc, encode EncodeResponseFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		request, err := decode(ctx, r)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		response, err := ep(ctx, request)
		if err != nil {
			ErrorResponse(ctx, err, w)

			return
		}

		if err := encode(ctx, w, response); err != nil {
			ErrorResponse(ctx, err, w)
		}
	}
}

// DecodeRequest builds the request DTO for an endpoint. A JSON body is
// decoded when one is present; DTOs implementing render.Binder then bind
// and validate themselves from the raw request (URL params included).
func DecodeRequest[T any](ctx context.Context, r *http.Request) (interface{}, error) {
	req := new(T)

	if r.Body != nil && r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, req); err != nil {
			return nil, err
		}
	}

	if binder, ok := any(req).(render.Binder); ok {
		if err := binder.Bind(r); err != nil {
			return nil, err
		}
	}

	return req, nil
}
