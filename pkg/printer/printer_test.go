package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectsKind(t *testing.T) {
	p, err := New("", "", "")
	require.NoError(t, err)
	assert.Equal(t, KindNone, p.Kind())
	assert.False(t, p.Ready(context.Background()))
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New(KindUSB, "", "")
	assert.Error(t, err)
	_, err = New(KindNetwork, "", "")
	assert.Error(t, err)
	_, err = New("bluetooth", "", "")
	assert.Error(t, err)
}

func TestUSBPrinterWritesDeviceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	p, err := New(KindUSB, path, "")
	require.NoError(t, err)
	assert.True(t, p.Ready(context.Background()))
	require.NoError(t, p.Print(context.Background(), []byte("hello")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
}

func TestNetworkPrinterSendsBytes(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		data, _ := io.ReadAll(conn)
		received <- data
	}()

	p, err := New(KindNetwork, "", ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, p.Print(context.Background(), []byte("ticket")))
	assert.Equal(t, []byte("ticket"), <-received)
}

func TestDocumentRowAlignsToWidth(t *testing.T) {
	doc := NewDocument(20)
	doc.Row("Total:", "59.98")
	out := doc.Bytes()

	line := string(out[5 : len(out)-1]) // skip init sequence and trailing LF
	assert.Len(t, line, 20)
	assert.True(t, bytes.HasSuffix([]byte(line), []byte("59.98")))
}

func TestDocumentTruncatesLongNames(t *testing.T) {
	doc := NewDocument(16)
	doc.Row("A very long product name", "9.99")
	out := doc.Bytes()
	assert.Equal(t, 16+1, len(out)-5)
}

func TestDocumentEncodesCodePage437(t *testing.T) {
	doc := NewDocument(32)
	doc.Line("Patrón")
	assert.Contains(t, string(doc.Bytes()), "Patr\xa2n")
}
