package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)

	if err := xcontext.Error(ctx); err != nil {
		if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the error response: %v", werr)
		}

		return
	}

	if err := writeJSON(w, newResponse(xcontext.Response(ctx))); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		xcontext.SetError(ctx, errorx.New(errorx.BadResponse, "Cannot write the response"))
	}
}

func writeJSON(w http.ResponseWriter, resp any) error {
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
