package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/shelfmark/backend/pkg/errorx"
	"github.com/shelfmark/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	// Middleware chains are captured at registration time so later
	// Before/After calls on the same branch do not change this route.
	befores := append([]MiddlewareFunc{}, router.befores...)
	afters := append([]MiddlewareFunc{}, router.afters...)
	closers := append([]CloserFunc{}, router.closers...)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := router.newRequestContext(r, w)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		if r.Method != method {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Not supported method %s", r.Method))
			writeResponse(ctx)
			return
		}

		for _, middleware := range befores {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				writeResponse(ctx)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = bindQuery(r.URL.Query(), &req)
		case http.MethodPost:
			err = bindBody(r.Body, &req)
		}
		if err != nil {
			xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
			writeResponse(ctx)
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			xcontext.SetError(ctx, err)
		} else {
			xcontext.SetResponse(ctx, resp)
		}

		for _, middleware := range afters {
			newCtx, err := middleware(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				break
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		writeResponse(ctx)
	}
}

func bindBody(body io.Reader, req any) error {
	err := json.NewDecoder(body).Decode(req)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// bindQuery fills req from query parameters using the json tag of each
// field. Only flat string, integer, boolean, and float fields are
// supported, which covers every GET request model.
func bindQuery(values url.Values, req any) error {
	v := reflect.ValueOf(req).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}

		param := values.Get(name)
		if param == "" {
			continue
		}

		target := v.Field(i)
		switch target.Kind() {
		case reflect.String:
			target.SetString(param)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(param, 10, 64)
			if err != nil {
				return err
			}
			target.SetInt(n)

		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			n, err := strconv.ParseUint(param, 10, 64)
			if err != nil {
				return err
			}
			target.SetUint(n)

		case reflect.Bool:
			b, err := strconv.ParseBool(param)
			if err != nil {
				return err
			}
			target.SetBool(b)

		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(param, 64)
			if err != nil {
				return err
			}
			target.SetFloat(f)
		}
	}

	return nil
}
