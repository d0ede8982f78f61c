/*
Package operation copies files and directory trees.

	+----------------+
	|  Copier.Run    |  classify source, reject missing / dir without -r
	+-------+--------+
	        |
	  +-----+------+
	  |            |
	+-v--------+ +-v-------+
	| CopyFile | | CopyDir |  explicit work-list, post-order notices
	+----------+ +----+----+
	                  |
	             CopyFile per entry

🎯 Purpose:
- Copy one file byte-for-byte through an atomic temp-file rename
- Mirror a source directory under a destination, additively
- Ask before overwriting when interactive
- Print a notice per file and per directory when verbose

🔄 Flow:
1. Run classifies the source with pathref
2. Files go to CopyFile, directories to CopyDir
3. CopyDir makes each destination directory and walks the source in name order
4. A directory notice is printed once all of its entries are done

⚠️ Failures:
The first error stops the whole run. Nothing is rolled back; files written
before the error stay where they are. A declined overwrite is not an error.

🔍 Example:

	c, err := operation.New(opts, operation.Env{
		Fs:        afero.NewOsFs(),
		Confirmer: prompt.NewLinePrompter(os.Stdin, os.Stdout),
		Console:   log.New(os.Stdout, os.Stderr, logger),
	})
	if err != nil {
		return err
	}
	outcome, err := c.Run(ctx)
*/
package operation
