// Package postbuild restructures typedoc markdown output in place.
//
// A run is a fixed sequence of stages over the API directory:
//
//  1. remove_unwanted  delete generator leftovers (e.g. api/_media)
//  2. flatten_modules  move classes/, interfaces/ and enumerations/ pages into their package
//  3. capitalize_dirs  upper-case the first letter of every package directory
//  4. prune_empty      delete directories left empty by the previous stages
//  5. export_links     write the sidebar link manifest as JSON
//  6. rewrite_links    apply recorded path substitutions and link cleanups to every file
//  7. audit_links      report link destinations that still point at removed locations
//
// Stages 2 and 3 return the substitutions they record; the runner threads them to
// stage 6. All directory listings are sorted so two runs over the same generator
// output produce byte-identical trees and manifests.
package postbuild
