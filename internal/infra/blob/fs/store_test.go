package fs

import (
	"context"
	"io"
	"strings"
	"testing"

	"familycore/internal/blob/core"
)

func TestPutGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	info, err := s.Put(ctx, "backups/latest.json", strings.NewReader(`{"ok":true}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"schema_version": "1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.ETag == "" {
		t.Fatalf("expected content hash etag")
	}

	if _, err := s.Put(ctx, "backups/latest.json", strings.NewReader("x"), core.PutOptions{}); err == nil {
		t.Fatalf("expected duplicate put to fail")
	}

	got, rc, err := s.Get(ctx, "backups/latest.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != `{"ok":true}` {
		t.Fatalf("unexpected content %q", data)
	}
	if got.ContentType != "application/json" || got.Metadata["schema_version"] != "1" {
		t.Fatalf("metadata sidecar not honored: %+v", got)
	}

	head, err := s.Head(ctx, "backups/latest.json")
	if err != nil || head.ETag != info.ETag {
		t.Fatalf("head mismatch: %+v err=%v", head, err)
	}
}

func TestDeleteAndList(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"backups/a.json", "backups/b.json", "other/c.json"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := s.List(ctx, "backups/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "backups/a.json" {
		t.Fatalf("unexpected listing: %+v", infos)
	}

	existed, err := s.Delete(ctx, "backups/a.json")
	if err != nil || !existed {
		t.Fatalf("delete: existed=%v err=%v", existed, err)
	}
	existed, err = s.Delete(ctx, "backups/a.json")
	if err != nil || existed {
		t.Fatalf("second delete: existed=%v err=%v", existed, err)
	}
}

func TestKeySanitization(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	for _, key := range []string{"", "  ", "../escape", "/absolute", "a/../../b"} {
		if _, err := s.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("expected key %q to be rejected", key)
		}
	}
}

func TestPresignLocalURL(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	url, err := s.PresignURL(context.Background(), "backups/a.json", core.SignedURLOptions{})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.Contains(url, "local.blob") {
		t.Fatalf("unexpected url %q", url)
	}
	if _, err := s.PresignURL(context.Background(), "k", core.SignedURLOptions{Method: "PUT"}); err == nil {
		t.Fatalf("expected PUT presign to be unsupported")
	}
}
