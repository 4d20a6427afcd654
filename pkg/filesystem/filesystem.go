// Package filesystem provides filesystem introspection: attribute snapshots,
// path helpers and a pull-based, prunable directory tree walk over local and
// SFTP trees.
//
// Basic usage:
//
//	walker, err := filesystem.Open("/srv/data", filesystem.WalkOptions{Recurse: true})
//	if err != nil {
//	    return err
//	}
//	defer walker.Close()
//
//	for visit := range walker.All() {
//	    if visit.Kind == filesystem.KindDirectory && filepath.Base(visit.Path) == ".git" {
//	        walker.SkipDescendants()
//	    }
//	}
//
//	return walker.Err()
package filesystem
