// Package luaext hosts user Lua scripts that extend a codec with custom
// type handlers.
//
// Scripts run in a restricted interpreter with only the base, table,
// string and math libraries available. A script calls
// formbind.register_type(keyword, parse [, serialize]) to install a
// handler; the registered functions are invoked later whenever the codec
// parses or serializes a token with that keyword.
package luaext
