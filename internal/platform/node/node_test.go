package node

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApp_Handle(t *testing.T) {
	ctx := ContextWithNoLogger(context.Background())

	var order []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				order = append(order, name)
				return next(ctx, payload)
			}
		}
	}

	app := New(Config{ContractName: "test"}, mw("app"))

	var values *Values
	app.Handle("cast_and_tally", func(ctx context.Context, payload []byte) ([]byte, error) {
		values = ValuesFromContext(ctx)
		order = append(order, "handler")
		return append([]byte("got "), payload...), nil
	}, mw("first"), mw("second"))

	got, err := app.Invoke(ctx, "cast_and_tally", []byte("vote"))
	if err != nil {
		t.Fatalf("Invoke failed : %s", err)
	}

	if string(got) != "got vote" {
		t.Errorf("Got %s, want %s", got, "got vote")
	}

	if diff := cmp.Diff([]string{"app", "first", "second", "handler"}, order); diff != "" {
		t.Errorf("Middleware order mismatch (-want +got):\n%s", diff)
	}

	if values == nil {
		t.Fatalf("Values not set in context")
	}
	if values.Method != "cast_and_tally" {
		t.Errorf("Got method %s, want %s", values.Method, "cast_and_tally")
	}
	if len(values.TraceID) == 0 {
		t.Errorf("Trace ID not set")
	}
	if values.Now.IsZero() {
		t.Errorf("Now not set")
	}
}

func TestApp_InvokeUnknown(t *testing.T) {
	ctx := ContextWithNoLogger(context.Background())
	app := New(Config{})

	if _, err := app.Invoke(ctx, "get_winner", nil); err == nil {
		t.Errorf("Expected error for unknown method")
	}
}

func TestErrorLogger(t *testing.T) {
	ctx := ContextWithNoLogger(context.Background())
	want := errors.New("failed")

	app := New(Config{}, ErrorLogger)
	app.Handle("fail", func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, want
	})

	if _, err := app.Invoke(ctx, "fail", nil); err != want {
		t.Errorf("Got %v, want %v", err, want)
	}

	if diff := cmp.Diff([]string{"fail"}, app.Methods()); diff != "" {
		t.Errorf("Methods mismatch (-want +got):\n%s", diff)
	}
}
