package protomux

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestProtoMux_Trigger(t *testing.T) {
	pm := New()

	pm.Handle("echo", func(ctx context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	})

	got, err := pm.Trigger(context.Background(), "echo", []byte("hello"))
	if err != nil {
		t.Fatalf("Trigger failed : %s", err)
	}
	if string(got) != "hello" {
		t.Errorf("Got %s, want %s", got, "hello")
	}

	_, err = pm.Trigger(context.Background(), "reset_votes", nil)
	if errors.Cause(err) != ErrUnknownMethod {
		t.Errorf("Got %v, want %v", err, ErrUnknownMethod)
	}
}

func TestProtoMux_Methods(t *testing.T) {
	pm := New()

	noop := func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, nil
	}
	pm.Handle("b", noop)
	pm.Handle("a", noop)
	pm.Handle("b", noop)

	if diff := cmp.Diff([]string{"a", "b"}, pm.Methods()); diff != "" {
		t.Errorf("Methods mismatch (-want +got):\n%s", diff)
	}
}
