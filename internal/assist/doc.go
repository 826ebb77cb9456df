// Package assist ties the suggestion subsystems to one editor.
//
// An Engine owns a document, its selection, a completion popup, a ghost
// suggestion set, a placeholder session and an idle suggestion fetcher.
// Keys enter through HandleKey and are routed to whichever subsystem
// currently owns input; the Arbiter guarantees that at most one of them
// does. Rendering layers pull Decorations after every event.
//
// Engines are not safe for concurrent use. Everything runs on the host's
// event loop; fetch results are posted back to it.
package assist
