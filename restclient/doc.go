// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package restclient talks to the GoCD configuration file endpoints.
//
// GoCD exposes the whole cruise-config.xml through two admin
// endpoints:
//
//	GET  /go/admin/restful/configuration/file/GET/xml
//	POST /go/admin/restful/configuration/file/POST/xml
//
// The GET response carries the document's md5 in the
// X-CRUISE-CONFIG-MD5 header. A POST sends the edited document as the
// form field xmlFile together with that md5; the server rejects the
// post with 409 Conflict when the config changed in between.
//
// Non-2xx responses become *[ServerError]. GoCD reports failures as a
// JSON object whose "result" field is the message; bodies that are not
// JSON are reported verbatim.
package restclient
