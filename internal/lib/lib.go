// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains third-party integrations, such as the client for the
// upstream chat-completion API, and small shared helpers.
package lib
