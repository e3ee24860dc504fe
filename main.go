package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/text"
	"github.com/mrnavastar/modsync/api"
	"github.com/mrnavastar/modsync/services"
	"github.com/mrnavastar/modsync/util/fileutils"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func newResolver(c *cli.Context) (*services.Resolver, error) {
	modsDir, err := fileutils.ModsDir()
	if err != nil {
		return nil, err
	}

	view, err1 := services.NewLocalView(modsDir)
	if err1 != nil {
		return nil, err1
	}

	client := api.NewClient()
	gameVersion := c.String("mc")
	if gameVersion == "" {
		v, err2 := client.GetLatestMcVersion()
		if err2 != nil {
			return nil, err2
		}
		gameVersion = v
	}
	return services.NewResolver(client, view, c.String("loader"), gameVersion), nil
}

func main() {
	app := &cli.App{
		Name:  "ModSync",
		Usage: "Keep a mods folder in sync with the registries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "mc", Usage: "target Minecraft version (defaults to the latest release)"},
			&cli.StringFlag{Name: "loader", Value: "fabric", Usage: "mod loader"},
		},
		Commands: []*cli.Command{
			{
				Name:  "setup",
				Usage: "Point modsync at a mods folder",
				Action: func(c *cli.Context) error {
					err := fileutils.Setup(c.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Println("Done.")
					return nil
				},
			},
			{
				Name:    "ls",
				Aliases: []string{"list"},
				Usage:   "List mods in the managed folder",
				Action: func(c *cli.Context) error {
					modsDir, err := fileutils.ModsDir()
					if err != nil {
						return err
					}
					view, err1 := services.NewLocalView(modsDir)
					if err1 != nil {
						return err1
					}

					lname := 0
					lversion := 0
					for _, mod := range view.Mods {
						if len(mod.Name) > lname {
							lname = len(mod.Name)
						}
						if len(mod.VersionNumber) > lversion {
							lversion = len(mod.VersionNumber)
						}
					}

					fmt.Println()
					fmt.Println(text.AlignDefault.Apply("NAME:", lname+2) + text.AlignDefault.Apply("VERSION:", lversion+2) + "FILENAME:")
					for _, mod := range view.Mods {
						name := text.Bold.Sprint(mod.Name)
						filename := mod.FileName
						if mod.Disabled {
							filename += " (disabled)"
						}
						fmt.Println(text.AlignDefault.Apply(name, lname+2) + text.AlignDefault.Apply(mod.VersionNumber, lversion+2) + filename)
					}
					fmt.Println()
					return nil
				},
			},
			{
				Name:  "check",
				Usage: "Check every installed mod against the target Minecraft version",
				Action: func(c *cli.Context) error {
					resolver, err := newResolver(c)
					if err != nil {
						return err
					}

					if c.String("loader") == "fabric" {
						if v, err1 := api.NewClient().GetLatestFabricLoaderVersion(); err1 == nil {
							pterm.Info.Println("Latest stable fabric loader: " + v)
						}
					}

					for _, result := range resolver.CheckUpdates() {
						switch {
						case result.HasUpdate:
							pterm.Info.Println(result.FileName + " -> " + result.LatestVersion)
						case !result.Compatible:
							msg := result.FileName + " is not compatible with " + resolver.GameVersion
							if result.Confidence != "" {
								msg += " (" + result.Confidence + " confidence)"
							}
							pterm.Warning.Println(msg)
						}
					}
					return nil
				},
			},
			{
				Name:  "deps",
				Usage: "Resolve a mod's dependency tree against the local folder",
				Action: func(c *cli.Context) error {
					if c.Args().Get(0) == "" {
						return errors.New("mod id or slug is required")
					}
					resolver, err := newResolver(c)
					if err != nil {
						return err
					}

					for _, report := range resolver.ResolveDependencies(c.Args().Get(0), nil) {
						switch report.Status {
						case "missing":
							msg := report.Name + " is missing"
							if report.SuggestedVersion != "" {
								msg += " (install " + report.SuggestedVersion + ")"
							}
							pterm.Warning.Println(msg)
						case "disabled":
							pterm.Warning.Println(report.Name + " is installed but disabled")
						case "version_mismatch":
							pterm.Warning.Println(report.Name + " " + report.InstalledVersion + " does not satisfy " + report.VersionRequirement)
						default:
							pterm.Success.Println(report.Name)
						}
					}
					return nil
				},
			},
			{
				Name:  "match",
				Usage: "Find registry candidates for an unidentified jar",
				Action: func(c *cli.Context) error {
					resolver, err := newResolver(c)
					if err != nil {
						return err
					}

					candidates, err1 := resolver.MatchMod(c.Args().Get(0))
					if err1 != nil {
						return err1
					}
					if len(candidates) == 0 {
						fmt.Println("No plausible matches found")
						return nil
					}

					for _, candidate := range candidates {
						fmt.Println(text.Bold.Sprint(candidate.Title) + " (" + candidate.Slug + ") by " + candidate.Author +
							" - score " + strconv.FormatFloat(candidate.Score, 'f', 2, 64))
					}
					return nil
				},
			},
			{
				Name:  "install",
				Usage: "Install mods by id or slug (prefix with c= for CurseForge)",
				Action: func(c *cli.Context) error {
					resolver, err := newResolver(c)
					if err != nil {
						return err
					}

					for _, arg := range c.Args().Slice() {
						id := arg
						if slug := strings.TrimPrefix(arg, "c="); slug != arg {
							if _, ok := services.CurseId(slug); ok {
								id = "curse:" + slug
							} else {
								projects, err1 := api.NewClient().SearchCurse(slug)
								if err1 != nil || len(projects) == 0 {
									pterm.Error.Println("Could not find mod under " + arg)
									continue
								}
								id = "curse:" + strconv.Itoa(projects[0].Id)
								for _, project := range projects {
									if project.Slug == slug {
										id = "curse:" + strconv.Itoa(project.Id)
										break
									}
								}
							}
						}

						_, err1 := resolver.InstallMod(id)
						if err1 == nil {
							continue
						}
						if err1.Error() == "mod already added" {
							fmt.Println(arg + " has already been added")
							continue
						}
						if id != arg {
							pterm.Error.Println("Could not install " + arg + ": " + err1.Error())
							continue
						}

						//fall back to a search when the id doesn't resolve directly
						hits, err2 := api.NewClient().SearchModrinth(arg, c.String("loader"))
						if err2 != nil || len(hits) == 0 {
							pterm.Error.Println("Could not find mod under " + arg)
							continue
						}
						if _, err3 := resolver.InstallMod(hits[0].Slug); err3 != nil {
							pterm.Error.Println("Could not install " + arg + ": " + err3.Error())
						}
					}
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "Update every mod with a newer matching version",
				Action: func(c *cli.Context) error {
					resolver, err := newResolver(c)
					if err != nil {
						return err
					}

					for _, result := range resolver.CheckUpdates() {
						if !result.HasUpdate {
							continue
						}
						if _, err1 := resolver.UpdateMod(result.FileName); err1 != nil {
							pterm.Error.Println("Could not update " + result.FileName + ": " + err1.Error())
						}
					}
					return nil
				},
			},
			{
				Name:  "enable",
				Usage: "Enable a disabled mod",
				Action: func(c *cli.Context) error {
					modsDir, err := fileutils.ModsDir()
					if err != nil {
						return err
					}
					return fileutils.EnableMod(modsDir, c.Args().Get(0))
				},
			},
			{
				Name:  "disable",
				Usage: "Disable a mod without deleting it",
				Action: func(c *cli.Context) error {
					modsDir, err := fileutils.ModsDir()
					if err != nil {
						return err
					}
					return fileutils.DisableMod(modsDir, c.Args().Get(0))
				},
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Delete a mod file and its manifest record",
				Action: func(c *cli.Context) error {
					modsDir, err := fileutils.ModsDir()
					if err != nil {
						return err
					}
					err1 := fileutils.RemoveMod(modsDir, c.Args().Get(0))
					if err1 != nil {
						return err1
					}
					pterm.Success.Println("Removed " + c.Args().Get(0))
					return nil
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
