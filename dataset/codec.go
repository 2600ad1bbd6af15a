package dataset

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// DatFileName 데이터셋 파일명 규칙: <kind>_<n>.dat
func DatFileName(kind Kind, n int) string {
	return fmt.Sprintf("%s_%d.dat", kind, n)
}

// EncodeDat little-endian int32 배열로 직렬화한다.
func EncodeDat(data []int) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) * 4)
	if err := WriteDat(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeDat EncodeDat 의 역. 길이가 4의 배수가 아니면 실패한다.
func DecodeDat(b []byte) ([]int, error) {
	if len(b)%4 != 0 {
		return nil, errors.Newf("dat payload length %d is not a multiple of 4", len(b))
	}
	data := make([]int, len(b)/4)
	for i := range data {
		data[i] = int(int32(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return data, nil
}

// WriteDat w 에 little-endian int32 로 쓴다.
func WriteDat(w io.Writer, data []int) error {
	var word [4]byte
	for i, v := range data {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return errors.Newf("value %d at index %d does not fit int32", v, i)
		}
		binary.LittleEndian.PutUint32(word[:], uint32(int32(v)))
		if _, err := w.Write(word[:]); err != nil {
			return errors.Wrap(err, "write dat")
		}
	}
	return nil
}

// ReadDat r 을 끝까지 읽어 디코딩한다.
func ReadDat(r io.Reader) ([]int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read dat")
	}
	return DecodeDat(b)
}

// WriteDatFile 파일로 저장 (디렉터리는 필요하면 만든다)
func WriteDatFile(path string, data []int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %s", path)
	}
	return writeFile(path, func(w *bufio.Writer) error {
		return WriteDat(w, data)
	})
}

// ReadDatFile .dat 파일 읽기
func ReadDatFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	data, err := ReadDat(bufio.NewReaderSize(file, 64*1024))
	return data, errors.Wrapf(err, "decode %s", path)
}

// WriteTextFile 한 줄에 하나씩 10진수로 저장 (큰 버퍼 + 주기적 플러시)
func WriteTextFile(path string, data []int) error {
	return writeFile(path, func(w *bufio.Writer) error {
		var builder strings.Builder
		builder.Grow(min(len(data), 10000) * 8)
		for i, num := range data {
			if i > 0 {
				builder.WriteByte('\n')
			}
			builder.WriteString(strconv.Itoa(num))

			// 메모리 사용량 제어
			if i%10000 == 0 {
				if _, err := w.WriteString(builder.String()); err != nil {
					return err
				}
				builder.Reset()
			}
		}
		if builder.Len() > 0 {
			if _, err := w.WriteString(builder.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

// createFile 쓰기용 파일 열기. 테스트에서 교체한다.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile path 를 만들어 write 로 채운다. Flush 와 Close 오류도 돌려준다.
func writeFile(path string, write func(w *bufio.Writer) error) (err error) {
	file, err := createFile(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()

	writer := bufio.NewWriterSize(file, 64*1024)
	if err := write(writer); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return errors.Wrapf(writer.Flush(), "flush %s", path)
}

// ReadTextFile WriteTextFile 형식 읽기. 빈 줄은 건너뛴다.
func ReadTextFile(path string) ([]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	// 파일 크기로 대략적인 개수를 추정해 미리 할당 (평균 6자리 + 개행)
	var data []int
	if info, err := file.Stat(); err == nil {
		data = make([]int, 0, int(info.Size()/7))
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), bufio.MaxScanTokenSize)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		num, err := strconv.Atoi(text)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		data = append(data, num)
	}
	return data, errors.Wrapf(scanner.Err(), "scan %s", path)
}

// ReadFile 확장자로 형식을 고른다: .dat 은 바이너리, 나머지는 텍스트.
func ReadFile(path string) ([]int, error) {
	if strings.EqualFold(filepath.Ext(path), ".dat") {
		return ReadDatFile(path)
	}
	return ReadTextFile(path)
}
