/*
Package config loads the optional rtlmigrate project file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |  JSON   |  |   HCL   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Choose which files a directory run converts (include / exclude globs)
- Switch off built-in rules by name
- Add project specific rules, appended after the built-in table

🔄 Flow:
1. Find looks for .rtlmigrate.{yaml,yml,json,hcl} in the working directory
2. The parser registered for the extension decodes the file
3. Validate fills defaults and checks globs, rule names and expressions
4. NewConverter turns the result into a convert.Converter

A missing file is not an error; Default returns the built-in settings.
*/
package config
