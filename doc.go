// Package webpush implements the cryptographic core of the Web Push
// protocol: payload encryption for the aes128gcm (RFC 8188/8291) and legacy
// aesgcm content encodings, and VAPID sender authentication (RFC 8292).
//
// The package is a pure computation boundary. It produces the encrypted
// request body and the authentication header values; assembling the HTTP
// request and delivering it to the push service is left to the caller.
//
// Basic usage:
//
//	sub := &webpush.Subscription{
//	    Endpoint: "https://push.example.net/...",
//	    Keys: webpush.Keys{
//	        P256dh: "BNcRd...", // from the browser's PushSubscription
//	        Auth:   "tBHI...",
//	    },
//	}
//
//	result, err := webpush.Encrypt(webpush.TextPayload("hello"), sub)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	headers, err := webpush.SignVAPID("https://push.example.net",
//	    "mailto:ops@example.com", keys, webpush.AES128GCM)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// result.Body is the request body, result.ContentEncoding the
//	// Content-Encoding header value, headers.Authorization the
//	// Authorization header value.
//
// All operations are synchronous, stateless, and safe for concurrent use;
// every call derives its own ephemeral key material.
package webpush
