package rdm_test

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	rdm "github.com/CoCo-R38/Rheel-Data-Management"
)

// Example demonstrates building a container, mutating typed entries
// and round-tripping it through a file.
func Example() {
	path := filepath.Join(os.TempDir(), "example-profile.rdm")
	defer os.Remove(path)

	obj := rdm.New()
	user := obj.Section("user")
	if err := user.Set("name", rdm.TextType, "Co"); err != nil {
		log.Fatal(err)
	}
	if err := user.Set("score", rdm.IntegerType, 10); err != nil {
		log.Fatal(err)
	}

	// Mutations respect the declared type of each entry.
	_ = user.Add("score", 5)
	_ = user.Multiply("score", 2)
	_ = user.Extend("name", "Co")

	if err := obj.Save(path); err != nil {
		log.Fatal(err)
	}
	loaded, err := rdm.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	name, _ := loaded.Section("user").GetString("name")
	score, _ := loaded.Section("user").GetInt64("score")
	fmt.Println(name, score)
	// Output: CoCo 30
}

// ExampleSection_Serialize shows the column-aligned text form of a
// section.
func ExampleSection_Serialize() {
	s := rdm.NewSection("user")
	_ = s.Set("name", rdm.TextType, "Co")
	_ = s.Set("score", rdm.IntegerType, 15)
	_ = s.Set("tags", rdm.SetOf(rdm.IntegerType), rdm.NewSet(2, 1))

	lines, _ := s.Serialize()
	for _, line := range lines {
		fmt.Println(line)
	}
	// Output:
	// [user]
	// name  : text         = "Co"
	// score : integer      = 15
	// tags  : set[integer] = {1, 2}
}

// ExampleParseType shows type expressions for generics and unions.
func ExampleParseType() {
	t, _ := rdm.ParseType("mapping[text, sequence[integer]]")
	fmt.Println(t)

	t, _ = rdm.ParseType("integer | none")
	fmt.Println(t)
	// Output:
	// mapping[text, sequence[integer]]
	// integer | none
}

// ExampleSection_Bind decodes a section into a plain struct.
func ExampleSection_Bind() {
	s := rdm.NewSection("server")
	_ = s.Set("host", rdm.TextType, "localhost")
	_ = s.Set("port", rdm.IntegerType, 8080)

	var cfg struct {
		Host string
		Port int
	}
	if err := s.Bind(&cfg); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s:%d\n", cfg.Host, cfg.Port)
	// Output: localhost:8080
}
