/*
Package ports defines the delegation-layer contract shared by tools, the
live registry, and the mock harness.

Every object reachable from a tool body exposes context-aware methods that
return either a textual payload or an error. Tools never hold ambient global
handlers; the registry is passed in explicitly, which is what makes the mock
substitution in pkg/harness possible.
*/
package ports
