/*
Package operation runs the converter over files on disk.

	+-------------+
	|  Discover   |
	|   (globs)   |
	+------+------+
	       |
	+------+------+
	|   Runner    |
	|  (convert)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (write)    |
	+-------------+

🎯 Purpose:
- Turn command line paths into the list of test files to convert
- Convert files concurrently with one shared convert.Converter
- Write results in place, into a mirror directory, or not at all

🔄 Flow:
1. Discover expands each directory with the include globs, drops excludes
2. Runner reads each file and calls Convert
3. Changed files are written atomically through the status package
4. Each file gets a FileReport; per-file failures never stop the run

Only context cancellation aborts a run. Convert itself never fails, so the
only per-file errors are reading and writing.
*/
package operation
