package swagger_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/adapters/http/swagger"
)

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	swagger.Register(context.Background(), mux)
	srv := httptest.NewServer(mux)
	defer srv.Close()

	get := func(path string) (*http.Response, string) {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		return resp, string(body)
	}

	Convey("Given the registered documentation routes", t, func() {
		Convey("When fetching the OpenAPI spec", func() {
			resp, body := get("/openapi.yaml")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "application/yaml")
			So(body, ShouldContainSubstring, "openapi: 3.0")
			So(body, ShouldContainSubstring, "/api/generate-campaign")
		})

		Convey("When fetching the docs page", func() {
			resp, body := get("/api-docs")
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/html")
			So(body, ShouldContainSubstring, "Redoc.init")
		})
	})
}
