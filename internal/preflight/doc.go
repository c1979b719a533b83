// Package preflight provides readiness checks for the external tool and
// filesystem paths exifstrip depends on.
//
// These checks run in two contexts:
//   - The run orchestrator checks the work directory before discovering
//     files, and stops the run when it is not usable.
//   - The CLI "exifstrip doctor" command runs RunAll and displays every
//     result.
package preflight
