// Command mdj reads a personal markdown journal -- dated entries with
// nested sections, hashtags, and inline tasks -- and lets you search it by
// tag, list its tags, render its structure as a tree, or list its tasks.
package main

import "github.com/senna-lang/mdj/cmd"

func main() {
	cmd.Execute()
}
