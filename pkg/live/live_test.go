package live

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/cells/pkg/component"
	"github.com/vango-dev/cells/pkg/dom"
	"github.com/vango-dev/cells/pkg/reactive"
	"github.com/vango-dev/cells/pkg/scheduler"
	"github.com/vango-dev/cells/pkg/vdom"
)

type counter struct {
	count *reactive.Signal[int]
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func setup(t *testing.T) (*component.Handle[counter], *Server, *httptest.Server) {
	t.Helper()
	reactive.ResetPanicked()
	t.Cleanup(reactive.ResetPanicked)

	host := scheduler.NewInline()
	doc := dom.NewDocument()
	view := func(c *component.Ctx[counter]) *vdom.VNode {
		return vdom.Div(
			vdom.Button(vdom.ID("inc"), vdom.OnClick(func(*dom.Event) {
				c.Data().count.Update(func(n int) int { return n + 1 })
			})),
			vdom.DynText(func() string { return strconv.Itoa(c.Data().count.Get()) }),
		)
	}
	h, err := component.Mount(counter{reactive.NewSignal(0)}, component.Fn(view), doc.Body(),
		component.WithHost(host), component.WithLogger(quiet()))
	require.NoError(t, err)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("cells_metrics 1\n"))
	})
	srv := New(doc, h, host, WithLogger(quiet()), WithMetrics("/metrics", metrics), WithTitle("Counter <demo>"))
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
		h.Unmount()
		host.Wait()
	})
	return h, srv, ts
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPage(t *testing.T) {
	h, _, ts := setup(t)

	body := get(t, ts.URL+"/")
	assert.Contains(t, body, "<title>Counter &lt;demo&gt;</title>")
	assert.Contains(t, body, `data-hid="`+h.Node().HID()+`"`)
	assert.Contains(t, body, `id="inc"`)
	assert.Contains(t, body, "new WebSocket")
}

func TestMetricsRoute(t *testing.T) {
	_, _, ts := setup(t)
	assert.Contains(t, get(t, ts.URL+"/metrics"), "cells_metrics 1")
}

func TestWebSocketEventRoundTrip(t *testing.T) {
	h, srv, ts := setup(t)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	var buttonHID string
	for _, c := range h.Node().Children() {
		if id, _ := c.GetAttribute("id"); id == "inc" {
			buttonHID = c.HID()
		}
	}
	require.NotEmpty(t, buttonHID)

	require.NoError(t, conn.WriteJSON(Event{HID: buttonHID, Type: "click"}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageHTML, msg.Type)
	assert.Equal(t, h.Node().HID(), msg.HID)
	assert.True(t, strings.HasSuffix(msg.HTML, "1"), "refreshed html: %s", msg.HTML)
}

func TestTranslate(t *testing.T) {
	doc := dom.NewDocument()
	div := doc.CreateElement("div")
	text := doc.CreateTextNode("a")
	require.NoError(t, div.AppendChild(text))

	msg, refresh := translate(dom.Patch{Op: dom.PatchSetAttr, HID: div.HID(), Key: "class", Value: "x", Target: div})
	require.NotNil(t, msg)
	assert.Equal(t, MessagePatch, msg.Type)
	assert.Empty(t, refresh)

	msg, refresh = translate(dom.Patch{Op: dom.PatchSetText, HID: text.HID(), Value: "b", Target: text})
	assert.Nil(t, msg)
	assert.Equal(t, div.HID(), refresh)

	msg, refresh = translate(dom.Patch{Op: dom.PatchRemoveNode, HID: text.HID(), ParentID: div.HID(), Target: text})
	assert.Nil(t, msg)
	assert.Equal(t, div.HID(), refresh)

	msg, _ = translate(dom.Patch{Op: dom.PatchInsertNode, HID: text.HID(), ParentID: div.HID(), Target: text})
	require.NotNil(t, msg)
	assert.Equal(t, dom.PatchInsertNode, msg.Patch.Op)
}

func TestPanicFrameSentToNewClients(t *testing.T) {
	_, srv, ts := setup(t)

	e := reactive.NewEngine(reactive.WithLogger(quiet()))
	e.Run(func() { panic("boom") })
	require.True(t, reactive.HasPanicked())

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageError, msg.Type)
	assert.Equal(t, reactive.ErrPanicked.Error(), msg.Error)
	_ = srv
}
