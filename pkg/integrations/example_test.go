package integrations_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/matzehuels/jarl-action/pkg/integrations"
)

func ExampleClient_Get() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name": "0.2.0"}`)
	}))
	defer server.Close()

	client := integrations.NewClient(map[string]string{"Accept": "application/vnd.github+json"})

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := client.Get(context.Background(), server.URL, &release); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(release.TagName)
	// Output: 0.2.0
}

func ExampleClient_Get_notFound() {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := integrations.NewClient(nil)

	var v any
	err := client.Get(context.Background(), server.URL, &v)
	fmt.Println(errors.Is(err, integrations.ErrNotFound))
	// Output: true
}
