package report

import "fmt"

// InstallGuide explains how to obtain ExifTool. exeDir is where a colocated
// copy would be picked up.
func (r *Reporter) InstallGuide(exeDir, goos string) {
	r.rule()
	r.println("       ExifTool is required")
	r.rule()
	r.println("")
	r.println("ExifTool is the metadata editor exifstrip relies on.")
	r.println("")
	r.println("Download and install:")
	if goos == "windows" {
		r.println("1. Visit https://exiftool.org/")
		r.println("2. Download the 'Windows Executable' package")
		r.println("3. Extract exiftool(-k).exe")
		r.println("4. Rename it to exiftool.exe")
		r.println("5. Place it in the same directory as this program")
	} else {
		r.println("1. Install it with your package manager, for example:")
		r.println("     apt install libimage-exiftool-perl")
		r.println("     brew install exiftool")
		r.println("2. Or download it from https://exiftool.org/ and place the")
		r.println("   exiftool script in the same directory as this program")
	}
	r.println("")
	r.println("Tips:")
	r.println("- No administrator rights are needed for a colocated copy")
	r.println("- Set EXIFTOOL_PATH or exiftool.path in the config to use another location")
	r.println("- Run this program again once ExifTool is in place")
	r.println("")
	r.println(fmt.Sprintf("Program directory: %s", exeDir))
	r.println("")
}
