// Package parseopt is a declarative command-line option parser.
//
// A Config lists Option declarations (names, a TypeSpec variant, defaults,
// constraints). New compiles them into Definitions once; Parse then walks an
// argument vector any number of times:
//
//   - "--name value", "--name=value" and "-n value" select options,
//   - "-abc" clusters short options,
//   - "--" ends option processing,
//   - everything else is collected as a positional argument.
//
// Parse returns a Result, ErrCancelled when an option hook aborted (the
// --help case), or a *ParseError. Invalid declarations fail construction
// with a *SchemaError. Messages are localized through the i18n package.
//
// Design policy:
//   - Keep the public API in the root package; helpers live under internal/.
//   - Place the builder DSL under dsl/, file based schemas under schemafile/,
//     process integration (os.Args, exit codes) under cli/ and the tool under
//     cmd/parseopt.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	p, err := parseopt.New(parseopt.Config{
//		Program: "greet",
//		Options: []parseopt.Option{
//			{Names: []string{"--count", "-c"}, Type: parseopt.IntegerType{Min: parseopt.Ptr[int64](1)}, Default: 1},
//			{Names: []string{"--loud"}, Type: parseopt.FlagType{}},
//		},
//	})
//	res, err := p.Parse(os.Args[1:])
//	fmt.Print(p.Usage(""))
package parseopt
