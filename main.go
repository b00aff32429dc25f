// jira-md reads Jira tickets over the REST API and prints them as
// Markdown-rendered JSON.
package main

import "github.com/antopolskiy/jira-md/cmd"

func main() {
	cmd.Execute()
}
