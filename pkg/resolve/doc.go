// Package resolve maps dependency coordinates to local artifact locations.
//
// Repository, the production Resolver, looks a coordinate up in this order:
//
//  1. the workspace table (coordinate → module directory)
//  2. the local repository, laid out as
//     <group with dots as slashes>/<artifact>/<version>/<artifact>-<version>.<type>
//  3. each remote repository, by HTTP GET of the same relative path; a
//     download is stored in the local repository before it is returned
//
// Failures are classified as ARTIFACT_MISSING, RESOLUTION_FAILED or
// RESOLUTION_UNKNOWN; Classify applies that taxonomy to any error.
package resolve
