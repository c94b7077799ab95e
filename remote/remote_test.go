// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package remote

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yourbase/profile/profile"
	"zombiezen.com/go/log/testlog"
)

func TestMain(m *testing.M) {
	testlog.Main(nil)
	os.Exit(m.Run())
}

// serve starts a Handler on a temporary directory and returns a connected
// client and the directory.
func serve(t *testing.T) (*Client, string) {
	t.Helper()
	root := t.TempDir()
	srv := httptest.NewServer(&Handler{Root: root})
	t.Cleanup(srv.Close)
	ctx := testlog.WithTB(context.Background(), t)
	c, err := Dial(ctx, wsURL(srv))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c, root
}

func TestClient(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	c, root := serve(t)

	if err := c.SetValue(ctx, "app.ini", "window", "width", "640"); err != nil {
		t.Fatal("SetValue:", err)
	}
	if err := c.SetValue(ctx, "app.ini", "window", "height", "480"); err != nil {
		t.Fatal("SetValue:", err)
	}
	if err := c.SetValue(ctx, "app.ini", "font", "name", "Tahoma"); err != nil {
		t.Fatal("SetValue:", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "app.ini"))
	if err != nil {
		t.Fatal(err)
	}
	const wantFile = "[window]\r\nwidth=640\r\nheight=480\r\n[font]\r\nname=Tahoma\r\n"
	if string(got) != wantFile {
		t.Errorf("file = %q; want %q", got, wantFile)
	}

	v, n, err := c.GetValue(ctx, "app.ini", "window", "height", "", 256)
	if v != "480" || n != 3 || err != nil {
		t.Errorf("GetValue(ctx, \"app.ini\", \"window\", \"height\", \"\", 256) = %q, %d, %v; want \"480\", 3, <nil>", v, n, err)
	}
	v, n, err = c.GetValue(ctx, "app.ini", "window", "depth", "32  ", 256)
	if v != "32" || n != 2 || !errors.Is(err, profile.NotFound) {
		t.Errorf("GetValue(ctx, \"app.ini\", \"window\", \"depth\", \"32  \", 256) = %q, %d, %v; want \"32\", 2, NotFound", v, n, err)
	}
	v, n, err = c.GetValue(ctx, "app.ini", "font", "name", "", 4)
	if v != "Tah" || n != 3 || !errors.Is(err, profile.MoreData) {
		t.Errorf("GetValue(ctx, \"app.ini\", \"font\", \"name\", \"\", 4) = %q, %d, %v; want \"Tah\", 3, MoreData", v, n, err)
	}

	names, n, err := c.GetSections(ctx, "app.ini", 256)
	if err != nil {
		t.Error("GetSections:", err)
	}
	if diff := cmp.Diff([]string{"window", "font"}, names); diff != "" || n != 12 {
		t.Errorf("GetSections length = %d (want 12); names (-want +got):\n%s", n, diff)
	}
	keys, _, err := c.GetKeys(ctx, "app.ini", "WINDOW", 256)
	if err != nil {
		t.Error("GetKeys:", err)
	}
	if diff := cmp.Diff([]string{"width", "height"}, keys); diff != "" {
		t.Errorf("GetKeys (-want +got):\n%s", diff)
	}
	entries, _, err := c.GetSection(ctx, "app.ini", "window", 256)
	if err != nil {
		t.Error("GetSection:", err)
	}
	if diff := cmp.Diff([]string{"width=640", "height=480"}, entries); diff != "" {
		t.Errorf("GetSection (-want +got):\n%s", diff)
	}

	if err := c.DeleteKey(ctx, "app.ini", "window", "width"); err != nil {
		t.Error("DeleteKey:", err)
	}
	if err := c.DeleteSection(ctx, "app.ini", "font"); err != nil {
		t.Error("DeleteSection:", err)
	}
	got, err = os.ReadFile(filepath.Join(root, "app.ini"))
	if err != nil {
		t.Fatal(err)
	}
	const wantAfterDelete = "[window]\r\nheight=480\r\n"
	if string(got) != wantAfterDelete {
		t.Errorf("file after deletes = %q; want %q", got, wantAfterDelete)
	}
}

func TestClientErrors(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	c, _ := serve(t)

	tests := []struct {
		name string
		path string
		want profile.Kind
	}{
		{name: "MissingFile", path: "missing.ini", want: profile.FileNotFound},
		{name: "Escape", path: "../outside.ini", want: profile.InvalidPath},
		{name: "Absolute", path: "/etc/passwd", want: profile.InvalidPath},
		{name: "Empty", path: "", want: profile.InvalidPath},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v, _, err := c.GetValue(ctx, test.path, "s", "k", "def", 256)
			if got := profile.KindOf(err); got != test.want {
				t.Errorf("GetValue(ctx, %q, ...) error = %v; want kind %v", test.path, err, test.want)
			}
			if test.want == profile.FileNotFound && v != "def" {
				t.Errorf("GetValue(ctx, %q, ...) = %q; want \"def\"", test.path, v)
			}
			if err := c.SetValue(ctx, test.path, "s", "k", "v"); test.want == profile.InvalidPath && profile.KindOf(err) != profile.InvalidPath {
				t.Errorf("SetValue(ctx, %q, ...) = %v; want kind %v", test.path, err, profile.InvalidPath)
			}
		})
	}
}

func TestUnknownOp(t *testing.T) {
	ctx := testlog.WithTB(context.Background(), t)
	c, _ := serve(t)
	req := &Request{Op: "frobnicate", Path: "app.ini"}
	reply, err := c.do(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Error == "" || reply.Kind != profile.IO {
		t.Errorf("reply = %+v; want IO kind with error message", reply)
	}
	if err := replyError(req, reply); !errors.Is(err, profile.IO) {
		t.Errorf("replyError(...) = %v; want IO", err)
	}
}

func TestClientCanceled(t *testing.T) {
	c, _ := serve(t)
	_, _, err := c.GetValue(canceledContext(), "app.ini", "s", "k", "", 256)
	if err == nil {
		t.Error("GetValue with canceled context did not return error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GetValue with canceled context = %v; want %v", err, context.Canceled)
	}
}
