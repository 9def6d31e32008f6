// Package live hosts a phone-input widget per websocket connection. The
// browser forwards field interactions, method calls and attribute changes as
// JSON messages; the server runs them against its own page and widget and
// answers with the widget events it produced and the updated markup.
//
// Messages from the client:
//
//	{"type":"event","event":"input","value":"+1415"}
//	{"type":"call","method":"validate"}
//	{"type":"attr","name":"disabled","value":"","remove":true}
//
// Messages from the server:
//
//	{"type":"event","event":"phone-change","detail":{...}}
//	{"type":"result","method":"validate","result":false}
//	{"type":"html","html":"<phone-input>...</phone-input>"}
//	{"type":"error","error":"..."}
package live
