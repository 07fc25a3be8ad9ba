package router

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	r *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, httpReq)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithRequestState(ctx)
		ctx = xcontext.WithStartTime(ctx, time.Now())

		func() {
			if httpReq.Method != method {
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest,
					"Not supported method %s", httpReq.Method))
				return
			}

			for _, m := range r.befores {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(httpReq, &req); err != nil {
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)

			for _, m := range r.afters {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}
		}()

		writeResponse(ctx)

		for _, closer := range r.closers {
			closer(ctx)
		}
	}
}

func bindRequest(httpReq *http.Request, req any) error {
	switch httpReq.Method {
	case http.MethodGet:
		return bindQuery(httpReq.URL.Query(), req)
	case http.MethodPost:
		mediaType, _, err := mime.ParseMediaType(httpReq.Header.Get("Content-Type"))
		if err == nil && mediaType == "multipart/form-data" {
			// The handler reads the multipart form itself.
			return nil
		}

		if err := json.NewDecoder(httpReq.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
			return err
		}

		return nil
	}

	return errors.New("unsupported method")
}

// bindQuery fills struct fields tagged with `json` from URL query values.
// Only the scalar kinds used by request models are supported.
func bindQuery(values url.Values, req any) error {
	structValue := reflect.ValueOf(req).Elem()
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		if !values.Has(name) {
			continue
		}

		value := values.Get(name)
		switch field.Type.Kind() {
		case reflect.String:
			structValue.Field(i).SetString(value)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			structValue.Field(i).SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return err
			}
			structValue.Field(i).SetBool(b)
		default:
			return errors.New("unsupported query parameter kind " + field.Type.Kind().String())
		}
	}

	return nil
}
