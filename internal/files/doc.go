// Package files groups the sub-packages that find and read SQL sources:
//   - filesystem: OS and in-memory providers behind one interface
//   - scanner: recursive discovery of SQL files with checksums
//
// # Usage
//
//	fileScanner := scanner.NewScanner(checksum.New(), scanner.Options{})
//	result, err := fileScanner.ScanDirectory("./schema")
package files
