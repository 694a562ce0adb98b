// Package live mirrors a mounted document into browsers.
//
// The server renders the document body on GET /, streams the document's
// patch journal over a websocket on GET /ws and turns the browser's
// {hid, type, value} messages back into DOM events. Every event is
// dispatched through the root's host, so it runs as a normal tick.
//
//	h, _ := component.Mount(data, view, doc.Body(), component.WithHost(loop))
//	srv := live.New(doc, h, loop, live.WithMetrics("/metrics", tel.Handler()))
//	defer srv.Close()
//	http.ListenAndServe(":8080", srv.Router())
//
// Text nodes carry no hydration id in the HTML, so patches that target one
// are sent as a refresh of the parent element's inner HTML once the tick
// that produced them has finished.
package live
