/*
Package status tracks what a conversion run did to each file and writes results safely.

	            +-------------+
	            |   Status    |
	            |  (Summary)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   Files   |           | Format  |
	|  (atomic) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Classify each file (converted, pending, unchanged, failed)
- Total a run into a Summary
- Write converted files through a temp file and rename
- Render file lines and summaries for the console

A file is pending when a dry run found changes that were not written.
*/
package status
