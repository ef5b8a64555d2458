// Package cli implements the interactive docfolders terminal client.
//
// App wires the HTTP client, the local cache, the folder tree and the action
// surfaces together and runs a read-eval-print loop over them. A background
// watcher pings the backend and flips the prompt between online and offline
// mode; while offline the tree shown is the cached snapshot.
//
// Commands
//
//	help                          show available commands
//	l | list                      print the folder tree
//	open <folder>                 expand or collapse a folder
//	select <folder> <file>        mark a file for a bulk operation
//	unselect <folder> <file>      unmark a file
//	selectall <folder>            toggle every ready file of a folder
//	filter [query]                show only matching files (no query clears)
//	move file|folder <id>         move one file or the selected files of a folder
//	copy file|folder <id>         copy one file or the selected files of a folder
//	delete file|folder|selected <id>
//	rename file|folder <id>
//	mkdir [name]                  create a folder
//	info file|folder <id>         show properties
//	reload                        fetch the tree again
//	exit | quit
package cli
