// Package flatten implements the naming convention shared by the copy and
// rasterize goals: a nested directory tree is turned into a single-level
// mapping of output file names to source files.
//
// A file at <root>/Sub/Dir/Icon.PNG maps to "Sub_Dir_icon.png": directory
// segments keep their source casing and are joined with an underscore, the
// leaf file name is lowercased. Only files whose extension is in the
// allowlist are mapped.
package flatten
