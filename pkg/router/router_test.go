package router

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/inkpost/backend/pkg/errorx"
	"github.com/inkpost/backend/pkg/logger"
	"github.com/inkpost/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

type echoResponse struct {
	Text string `json:"text"`
	Page int    `json:"page"`
}

func newTestRouter() *Router {
	ctx := xcontext.WithLogger(context.Background(), logger.NewLogger(logger.SILENCE))
	return New(ctx)
}

func Test_router_bindGetQuery(t *testing.T) {
	r := newTestRouter()
	GET(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Text: req.Text, Page: req.Page}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/echo?text=hello&page=3", nil))

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 0, resp.Code)
	require.Equal(t, "hello", resp.Data.Text)
	require.Equal(t, 3, resp.Data.Page)
}

func Test_router_bindPostBody(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{Text: req.Text, Page: req.Page}, nil
	})

	body := strings.NewReader(`{"text": "hello", "page": 7}`)
	req := httptest.NewRequest("POST", "/echo", body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	var resp struct {
		Code int64        `json:"code"`
		Data echoResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "hello", resp.Data.Text)
	require.Equal(t, 7, resp.Data.Page)
}

func Test_router_errorEnvelope(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, errorx.New(errorx.NotFound, "Not found anything")
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/fail", nil))

	var resp struct {
		Code  int64  `json:"code"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, errorx.NotFound, resp.Code)
	require.Equal(t, "Not found anything", resp.Error)
}

func Test_router_methodMismatch(t *testing.T) {
	r := newTestRouter()
	POST(r, "/only-post", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/only-post", nil))

	var resp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, errorx.BadRequest, resp.Code)
}

func Test_router_branchMiddlewareIsolation(t *testing.T) {
	r := newTestRouter()

	guarded := r.Branch()
	guarded.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})

	GET(guarded, "/private", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})
	GET(r, "/public", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return &echoResponse{}, nil
	})

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/private", nil))
	var privateResp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &privateResp))
	require.EqualValues(t, errorx.Unauthenticated, privateResp.Code)

	w = httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/public", nil))
	var publicResp struct {
		Code int64 `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &publicResp))
	require.EqualValues(t, 0, publicResp.Code)
}
