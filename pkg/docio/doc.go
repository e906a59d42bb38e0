// Package docio 负责配置文档的读写。
//
// 支持 YAML、JSON 与 TOML，三种格式都保持 key 的文档顺序：
//   - YAML 基于 yaml.Node 解析
//   - JSON 基于 encoding/json 的 token 流解析
//   - TOML 基于 [toml.MetaData.Keys] 记录的出现顺序
//
// # 格式选择
//
// 按文件扩展名判断 (见 [FormatFromPath])：
//   - .yaml, .yml → YAML
//   - .json → JSON
//   - .toml, .tml → TOML
//   - 其他扩展名按 YAML 处理
//
// # 写入
//
// [SaveFile] 先写入同目录临时文件，fsync 后再 rename 覆盖目标文件，
// 失败时不会留下写了一半的配置。
//
// # 快速开始
//
//	doc, err := docio.LoadFile("config.yaml")
//	if err != nil {
//	    return err
//	}
//	err = docio.SaveFile("config.toml", doc)
package docio
