package pkg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestFileOperate(t *testing.T) {
	convey.Convey("check and replace files", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "a.ini")

		exist, err := CheckFileExist(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeFalse)

		convey.So(ReplaceFile(path, []byte("[a]\n")), convey.ShouldBeNil)
		exist, err = CheckFileExist(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(exist, convey.ShouldBeTrue)

		convey.So(os.Chmod(path, 0o600), convey.ShouldBeNil)
		convey.So(ReplaceFile(path, []byte("[b]\n")), convey.ShouldBeNil)
		data, _ := os.ReadFile(path)
		convey.So(string(data), convey.ShouldEqual, "[b]\n")
		info, _ := os.Stat(path)
		convey.So(info.Mode().Perm(), convey.ShouldEqual, os.FileMode(0o600))

		entries, _ := os.ReadDir(dir)
		convey.So(len(entries), convey.ShouldEqual, 1)
	})
}
