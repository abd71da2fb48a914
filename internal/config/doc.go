// Package config loads tool-server launch descriptors from a JSON file.
//
// The file uses the familiar "mcpServers" layout: a name-keyed object of
// {command, args, env} descriptors. Declaration order is preserved because it
// determines registration order, and registration order decides which server
// wins when two servers expose a tool with the same name.
package config
