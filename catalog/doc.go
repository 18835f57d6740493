// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
Package catalog 提供图像生成所用的只读目录：风格预设、风格分类、
模型描述、尺寸预设与质量模式。

# 概述

所有表在包初始化时构建并校验（键唯一、分类存在、尺寸为正）。
校验失败会 panic，因为目录是编译期常量，错误只可能来自代码修改。

# 查询

  - StyleOf / ModelOf / SizeOf / QualityModeOf：未知键返回 ErrNotFound
  - Styles / StylesByCategory / Categories：按分类顺序排列
  - Models / Sizes：按声明顺序排列
  - MatchSize：由宽高反查尺寸预设
*/
package catalog
